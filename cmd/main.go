// cmd/main.go
package main

import (
	"office-graph-api/app"
)

// @title           Office Graph API
// @version         1.0
// @description     Signs users in with Microsoft, sends mail through Graph, generates text and office documents.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
