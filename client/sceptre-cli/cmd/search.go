package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for evidence and feed it into the session knowledge base",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSearch(args[0])
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(query string) {
	payload := map[string]string{
		"session_id": sessionID,
		"query":      query,
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("Error creating JSON payload: %v", err)
	}

	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		log.Fatalf("Error calling verification service: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Search failed, status code: %d", resp.StatusCode)
	}

	var result struct {
		Status  string `json:"status"`
		Query   string `json:"query"`
		Results []struct {
			Title          string  `json:"title"`
			URL            string  `json:"url"`
			RelevanceScore float64 `json:"relevance_score"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatalf("Error decoding response: %v", err)
	}

	fmt.Printf("Status: %s\n", result.Status)
	for _, doc := range result.Results {
		fmt.Printf("  [%.2f] %s\n         %s\n", doc.RelevanceScore, doc.Title, doc.URL)
	}
}
