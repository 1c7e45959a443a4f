/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/killallgit/scribe-api/cmd"

// @title           Scribe API
// @version         1.0.0
// @description     Transcribes hosted audio through a speech-to-text provider and translates long text in bounded, concurrently processed segments
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/scribe-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
