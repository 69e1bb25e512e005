/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/authorityshow/editor-api/cmd"

// @title           Podcast Editor API
// @version         1.0.0
// @description     An AI-assisted podcast editing pipeline with credit metering
// @termsOfService  http://swagger.io/terms/
// @contact.name    API Support
// @contact.url     https://github.com/authorityshow/editor-api
// @contact.email   support@example.com
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey  UserID
// @in                          header
// @name                        X-User-ID
// @description                 Caller identity for credit metering and edit history
func main() {
	cmd.Execute()
}
