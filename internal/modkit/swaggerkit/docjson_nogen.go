//go:build !swag

package swaggerkit

// docReader serves a skeleton so the UI still loads without the swag build tag
var docReader = func() string {
	return `{"openapi":"3.0.3","info":{"title":"Spoilerguard API","version":"0.0.0"},"paths":{}}`
}
