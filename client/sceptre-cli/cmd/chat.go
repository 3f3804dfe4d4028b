package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask a question grounded in the session's gathered evidence",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runChat(args[0])
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh [topic]",
	Short: "Refresh the session knowledge base with evidence about a topic",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRefresh(args[0])
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(refreshCmd)
}

func runChat(question string) {
	payload := map[string]interface{}{
		"session_id": sessionID,
		"query":      question,
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("Error creating JSON payload: %v", err)
	}

	resp, err := http.Post(serverURL+"/api/v1/chat", "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		log.Fatalf("Error calling verification service: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Chat failed, status code: %d", resp.StatusCode)
	}

	var result struct {
		Answer  string `json:"answer"`
		Sources []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"sources"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatalf("Error decoding response: %v", err)
	}

	fmt.Println(result.Answer)
	if len(result.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range result.Sources {
			fmt.Printf("  - %s (%s)\n", src.Title, src.URL)
		}
	}
}

func runRefresh(topic string) {
	payload := map[string]string{
		"session_id": sessionID,
		"topic":      topic,
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("Error creating JSON payload: %v", err)
	}

	resp, err := http.Post(serverURL+"/api/v1/knowledge/refresh", "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		log.Fatalf("Error calling verification service: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Refresh failed, status code: %d", resp.StatusCode)
	}

	var result struct {
		Message       string `json:"message"`
		DocumentCount int    `json:"document_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatalf("Error decoding response: %v", err)
	}

	fmt.Printf("%s (%d documents)\n", result.Message, result.DocumentCount)
}
