// Package main provides the maxsmart CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/maxsmart-ai/maxsmart/cli"
)

var (
	// Global flags
	provider string
	chatID   string
	verbose  bool
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "maxsmart",
		Short: "A second-brain assistant over your documents and chats",
		Long: `maxsmart answers questions using an LLM that decides for itself whether
it needs your chat history and stored documents before answering.

Documents are ingested into a vector store (Postgres/pgvector or a local
embedded store) and chat history is kept in SQLite.`,
	}

	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "", "LLM provider (openai, anthropic, gemini)")
	rootCmd.PersistentFlags().StringVarP(&chatID, "chat", "c", "", "Chat ID (defaults to 'default' for ask, random for chat)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show negotiation steps")

	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(chatsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func options() cli.Options {
	return cli.Options{
		Provider: provider,
		ChatID:   chatID,
		Verbose:  verbose,
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Ask(context.Background(), args[0], options())
		},
	}
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Chat(context.Background(), options())
		},
	}
}

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest [file...]",
		Short: "Add documents to the brain's vector store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Ingest(context.Background(), args, options())
		},
	}
}

func chatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "Manage stored chats",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List chat IDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ListChats(context.Background(), options())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [chat-id]",
		Short: "Delete a chat and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.DeleteChat(context.Background(), args[0], options())
		},
	})

	return cmd
}
