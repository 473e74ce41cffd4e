package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"elmora/internal/config"
	"elmora/internal/output"
)

// ChatCmd represents the chat command
var ChatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the assistant",
	Long:  "Open the interactive chat. With --once or a message argument, process a single utterance and exit.",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		once, _ := cmd.Flags().GetBool("once")
		RunChat(args, once)
	},
}

func init() {
	ChatCmd.Flags().Bool("once", false, "Process one utterance and exit instead of opening the chat")
}

// ServeCmd represents the serve command
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and reminder scheduler",
	Long:  "Start the HTTP API, the reminder scheduler, and (when stdin is a pipe) the stdio MCP server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServe()
	},
}

// McpCmd represents the mcp command
var McpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server mode",
	Long:  "Start elmora as an MCP server over stdio for integration with MCP clients",
	Run: func(cmd *cobra.Command, args []string) {
		RunMCP()
	},
}

// MedicineCmd represents the medicine parent command
var MedicineCmd = &cobra.Command{
	Use:     "medicine",
	Aliases: []string{"med"},
	Short:   "Manage medicines",
	Long:    "Add, list, or remove scheduled medicines; each carries a daily reminder",
}

// MedicineAddCmd represents the medicine add command
var MedicineAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update a medicine",
	Long:  "Add a medicine with its dosage and time of day. An existing name updates in place.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dosage, _ := cmd.Flags().GetString("dosage")
		timeOfDay, _ := cmd.Flags().GetString("time")
		frequency, _ := cmd.Flags().GetString("frequency")
		notes, _ := cmd.Flags().GetString("notes")
		RunMedicineAdd(args[0], dosage, timeOfDay, frequency, notes)
	},
}

func init() {
	MedicineAddCmd.Flags().StringP("dosage", "d", "", "Dosage, e.g. '500 mg'")
	MedicineAddCmd.Flags().StringP("time", "t", "", "24h HH:MM time the medicine is due")
	MedicineAddCmd.Flags().StringP("frequency", "f", "daily", "Frequency label")
	MedicineAddCmd.Flags().StringP("notes", "n", "", "Extra instructions, e.g. 'after food'")
	MedicineAddCmd.MarkFlagRequired("time")
}

// MedicineListCmd represents the medicine list command
var MedicineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List medicines",
	Run: func(cmd *cobra.Command, args []string) {
		RunMedicineList()
	},
}

// MedicineRemoveCmd represents the medicine remove command
var MedicineRemoveCmd = &cobra.Command{
	Use:               "remove <name>",
	Short:             "Remove a medicine",
	Long:              "Remove a medicine by name and drop its daily reminder",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeMedicineNames,
	Run: func(cmd *cobra.Command, args []string) {
		RunMedicineRemove(args[0])
	},
}

// ContactCmd represents the contact parent command
var ContactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage contacts",
	Long:  "Add, list, or remove the contacts the assistant can offer to call",
}

// ContactAddCmd represents the contact add command
var ContactAddCmd = &cobra.Command{
	Use:   "add <name> <number>",
	Short: "Add a contact",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		RunContactAdd(args[0], args[1])
	},
}

// ContactListCmd represents the contact list command
var ContactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Run: func(cmd *cobra.Command, args []string) {
		RunContactList()
	},
}

// ContactRemoveCmd represents the contact remove command
var ContactRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a contact",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		RunContactRemove(args[0])
	},
}

// StoreCmd represents the store parent command
var StoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage stores",
	Long:  "Add, list, or remove the stores offered in the shopping flow",
}

// StoreAddCmd represents the store add command
var StoreAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a store",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		distance, _ := cmd.Flags().GetString("distance")
		minutes, _ := cmd.Flags().GetInt("minutes")
		RunStoreAdd(args[0], distance, minutes)
	},
}

func init() {
	StoreAddCmd.Flags().StringP("distance", "d", "", "Display distance, e.g. '550 m'")
	StoreAddCmd.Flags().IntP("minutes", "m", 0, "Walking time in minutes")
	StoreAddCmd.MarkFlagRequired("minutes")
}

// StoreListCmd represents the store list command
var StoreListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stores",
	Run: func(cmd *cobra.Command, args []string) {
		RunStoreList()
	},
}

// StoreRemoveCmd represents the store remove command
var StoreRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a store",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		RunStoreRemove(args[0])
	},
}

// PlanCmd represents the plan parent command
var PlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage outing plans",
	Long:  "Add, list, or remove the outing suggestions offered in the outing flow",
}

// PlanAddCmd represents the plan add command
var PlanAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add an outing plan",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		RunPlanAdd(args[0])
	},
}

// PlanListCmd represents the plan list command
var PlanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List outing plans",
	Run: func(cmd *cobra.Command, args []string) {
		RunPlanList()
	},
}

// PlanRemoveCmd represents the plan remove command
var PlanRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an outing plan",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		RunPlanRemove(args[0])
	},
}

// RemindCmd represents the remind parent command
var RemindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Manage queued reminders",
	Long:  "List or cancel queued reminders and alarms",
}

// RemindListCmd represents the remind list command
var RemindListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queued reminders",
	Run: func(cmd *cobra.Command, args []string) {
		RunRemindList()
	},
}

// RemindCancelCmd represents the remind cancel command
var RemindCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a reminder",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		RunRemindCancel(args[0])
	},
}

// SuggestCmd represents the suggest command
var SuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Print a suggested prompt",
	Run: func(cmd *cobra.Command, args []string) {
		RunSuggest()
	},
}

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show elmora version",
	Run: func(cmd *cobra.Command, args []string) {
		RunVersion()
	},
}

// CompletionCmd generates shell completion scripts
var CompletionCmd = &cobra.Command{
	Use:       "completion [bash|zsh|fish|powershell]",
	Short:     "Generate shell completion script",
	Hidden:    true,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(os.Stdout, true)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return fmt.Errorf("unsupported shell: %s", args[0])
	},
}

func init() {
	MedicineCmd.AddCommand(MedicineAddCmd, MedicineListCmd, MedicineRemoveCmd)
	ContactCmd.AddCommand(ContactAddCmd, ContactListCmd, ContactRemoveCmd)
	StoreCmd.AddCommand(StoreAddCmd, StoreListCmd, StoreRemoveCmd)
	PlanCmd.AddCommand(PlanAddCmd, PlanListCmd, PlanRemoveCmd)
	RemindCmd.AddCommand(RemindListCmd, RemindCancelCmd)
}

// AddCommands mounts every command on the root and wires the global flags.
func AddCommands(root *cobra.Command) {
	root.PersistentFlags().BoolVar(&output.JSONMode, "json", false, "Output results as JSON")

	root.AddCommand(ChatCmd)
	root.AddCommand(ServeCmd)
	root.AddCommand(McpCmd)
	root.AddCommand(MedicineCmd)
	root.AddCommand(ContactCmd)
	root.AddCommand(StoreCmd)
	root.AddCommand(PlanCmd)
	root.AddCommand(RemindCmd)
	root.AddCommand(SuggestCmd)
	root.AddCommand(VersionCmd)
	root.AddCommand(CompletionCmd)
}

// completeMedicineNames provides dynamic completion for medicine names
func completeMedicineNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, m := range openRecords(cfg).Medicines.List() {
		names = append(names, m.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
