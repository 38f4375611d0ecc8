// backend-go/internal/api/middleware/organization.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// OrganizationKey is the gin context key holding the resolved organization
// id for the request.
const OrganizationKey = "organization_id"

// organizationHeader carries the organization resolved by the upstream auth
// layer. Auth itself is an external collaborator; this middleware only
// plumbs its result through. An absent header is not rejected here -
// handlers answer with the uniform empty state instead.
const organizationHeader = "X-Organization-ID"

// ResolveOrganization stores the caller's organization id on the context.
func ResolveOrganization() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := strings.TrimSpace(c.GetHeader(organizationHeader))
		c.Set(OrganizationKey, orgID)
		c.Next()
	}
}

// OrganizationID reads the resolved organization id, empty when the request
// was unauthenticated.
func OrganizationID(c *gin.Context) string {
	if v, ok := c.Get(OrganizationKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
