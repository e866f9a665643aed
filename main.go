package main

import "github.com/waveforge/generator-api/cmd"

// @title           Waveforge Generator API
// @version         1.0.0
// @description     A multi-provider music generation API with unified track metadata
// @contact.name    API Support
// @contact.url     https://github.com/waveforge/generator-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
