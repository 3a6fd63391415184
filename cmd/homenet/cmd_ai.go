package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sguter90/homenet/pkg/models"
	"github.com/spf13/cobra"
)

var messageFlag string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the HomeNet assistant",
	Long: `Start an interactive conversation with the assistant. Type "exit" to
leave. With --message a single question is sent.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show AI suggestions for your home",
	Args:  cobra.NoArgs,
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(insightsCmd)

	chatCmd.Flags().StringVarP(&messageFlag, "message", "m", "", "send one message and exit")
}

func runChat(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()

	if messageFlag != "" {
		resp, err := a.client.Chat(ctx, models.ChatRequest{Message: messageFlag})
		if err != nil {
			return describeError("chat failed", err)
		}
		fmt.Println(resp.Response)
		return nil
	}

	printHeader("HomeNet Assistant (type \"exit\" to quit)")

	conversationID := ""
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := prompt("\nYou: ")
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			return nil
		}

		resp, err := a.client.Chat(ctx, models.ChatRequest{Message: line, ConversationID: conversationID})
		if err != nil {
			fmt.Printf("⚠️  %v\n", describeError("chat failed", err))
			continue
		}
		conversationID = resp.ConversationID
		fmt.Printf("Assistant: %s\n", resp.Response)
	}
}

func runInsights(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	list, err := a.client.Insights(cmd.Context())
	if err != nil {
		return describeError("failed to load insights", err)
	}
	if len(list) == 0 {
		fmt.Println("No insights right now.")
		return nil
	}

	printHeader("AI Insights")
	for _, in := range list {
		fmt.Printf("[%s] %s (%s)\n    %s\n", strings.ToUpper(in.Priority), in.Title, in.Type, in.Message)
	}
	printFooter()
	return nil
}
