package main

import (
	"os"

	"github.com/spf13/cobra"

	"elmora/internal/commands"
)

var rootCmd = &cobra.Command{
	Use:   "elmora",
	Short: "A caring daily assistant for elderly users",
	Long:  "Elmora is a rule-based conversational assistant that helps with medicines, shopping trips, outings, sleep alarms, and staying in touch",
	Run: func(cmd *cobra.Command, args []string) {
		// Bare `elmora` opens the chat.
		commands.RunChat(args, false)
	},
}

func init() {
	commands.AddCommands(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
