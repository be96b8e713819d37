//go:build swag

package swaggerkit

import "spoilerguard/internal/services/api/docs"

// docReader renders the annotated document registered by the docs package
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }
