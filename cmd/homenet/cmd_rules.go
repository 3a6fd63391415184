package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	ruleNameFlag    string
	ruleTriggerFlag string
	ruleActionFlag  string
	ruleDevicesFlag []string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Automation rules kept on this machine",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List automation rules",
	Args:  cobra.NoArgs,
	RunE:  runRulesList,
}

var rulesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an automation rule",
	Long: `Add an automation rule.

Example:
  homenet rules add --name "Close blinds" --trigger "temperature > 85" --action "close" --device 3`,
	Args: cobra.NoArgs,
	RunE: runRulesAdd,
}

var rulesEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRulesSetEnabled(cmd, args[0], true)
	},
}

var rulesDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRulesSetEnabled(cmd, args[0], false)
	},
}

var rulesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesDelete,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rulesCmd.AddCommand(rulesEnableCmd)
	rulesCmd.AddCommand(rulesDisableCmd)
	rulesCmd.AddCommand(rulesDeleteCmd)

	rulesAddCmd.Flags().StringVar(&ruleNameFlag, "name", "", "rule name")
	rulesAddCmd.Flags().StringVar(&ruleTriggerFlag, "trigger", "", "condition that fires the rule")
	rulesAddCmd.Flags().StringVar(&ruleActionFlag, "action", "", "action to perform")
	rulesAddCmd.Flags().StringArrayVar(&ruleDevicesFlag, "device", nil, "device id the rule applies to (repeatable)")
	rulesAddCmd.MarkFlagRequired("name")
	rulesAddCmd.MarkFlagRequired("trigger")
	rulesAddCmd.MarkFlagRequired("action")
}

func runRulesList(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	rules, err := a.local.Rules(cmd.Context())
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		fmt.Println("No automation rules yet.")
		return nil
	}

	printHeader("Automation Rules")
	for _, r := range rules {
		state := "disabled"
		if r.Enabled {
			state = "enabled"
		}
		fmt.Printf("%s  %s [%s]\n", r.ID, r.Name, state)
		fmt.Printf("    when %s then %s", r.Trigger, r.Action)
		if len(r.Devices) > 0 {
			fmt.Printf(" on %s", strings.Join(r.Devices, ", "))
		}
		fmt.Println()
	}
	printFooter()
	return nil
}

func runRulesAdd(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()

	rules, err := a.local.Rules(ctx)
	if err != nil {
		return err
	}
	rules, rule, err := addRule(rules, ruleNameFlag, ruleTriggerFlag, ruleActionFlag, ruleDevicesFlag)
	if err != nil {
		return err
	}
	if err := a.local.SetRules(ctx, rules); err != nil {
		return err
	}

	fmt.Printf("✓ Rule %q added (ID: %s)\n", rule.Name, rule.ID)
	return nil
}

func runRulesSetEnabled(cmd *cobra.Command, id string, enabled bool) error {
	a := appFrom(cmd)
	ctx := cmd.Context()

	rules, err := a.local.Rules(ctx)
	if err != nil {
		return err
	}
	rules, err = setRuleEnabled(rules, id, enabled)
	if err != nil {
		return err
	}
	if err := a.local.SetRules(ctx, rules); err != nil {
		return err
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Printf("✓ Rule %s %s\n", id, state)
	return nil
}

func runRulesDelete(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()

	rules, err := a.local.Rules(ctx)
	if err != nil {
		return err
	}
	rules, err = deleteRule(rules, args[0])
	if err != nil {
		return err
	}
	if err := a.local.SetRules(ctx, rules); err != nil {
		return err
	}

	fmt.Printf("✓ Rule %s deleted\n", args[0])
	return nil
}
