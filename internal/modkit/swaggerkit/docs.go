package swaggerkit

import docs "interestd/internal/services/api/docs"

// readDoc returns the doc generated by swag init from the handler annotations
func readDoc() string { return docs.SwaggerInfo.ReadDoc() }
