package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var verifyURL string

var verifyCmd = &cobra.Command{
	Use:   "verify [content]",
	Short: "Verify a piece of content against trusted sources",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var content string
		if len(args) > 0 {
			content = args[0]
		}
		if content == "" && verifyURL == "" {
			log.Fatal("provide content as an argument or a page with --url")
		}
		runVerify(content, verifyURL)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyURL, "url", "", "verify the content of a web page instead of literal text")
}

func runVerify(content, pageURL string) {
	payload := map[string]string{
		"session_id": sessionID,
		"content":    content,
		"url":        pageURL,
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("Error creating JSON payload: %v", err)
	}

	resp, err := http.Post(serverURL+"/api/v1/verify", "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		log.Fatalf("Error calling verification service: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Verification failed, status code: %d", resp.StatusCode)
	}

	var result struct {
		Score       float64 `json:"score"`
		Credibility string  `json:"credibility"`
		Details     string  `json:"details"`
		Sources     []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"sources"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatalf("Error decoding response: %v", err)
	}

	fmt.Printf("Score:       %.2f\n", result.Score)
	fmt.Printf("Credibility: %s\n", result.Credibility)
	fmt.Printf("Details:     %s\n", result.Details)
	if len(result.Sources) > 0 {
		fmt.Println("Sources:")
		for _, src := range result.Sources {
			fmt.Printf("  - %s (%s)\n", src.Title, src.URL)
		}
	}
}
