package service

import (
	"Sceptre/backend/go/internal/llm"
	"Sceptre/backend/go/internal/models"
	httpclient "Sceptre/backend/go/pkg/http"
	"Sceptre/backend/go/pkg/logger"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gabriel-vasile/mimetype"
)

// maxPageBytes caps how much of a submitted page is read for verification.
const maxPageBytes = 2 << 20

const describeImagePrompt = `Describe the factual content of this image in detail.
List any text, statistics, charts, or claims it contains, as plain statements
that could be checked against external sources. Do not speculate about
anything the image does not show.`

// Content is one piece of submitted material. Exactly one field is set:
// free text, a page URL, or raw image bytes.
type Content struct {
	Text  string
	URL   string
	Image []byte
}

// ContentProcessor converts submitted material into the plain text the
// claim extractor works on. Pages are fetched and reduced to markdown;
// images are described by the oracle.
type ContentProcessor struct {
	log    *logger.Logger
	oracle llm.LLM
	client *httpclient.Client
}

// NewContentProcessor creates a processor using the given oracle for image
// description and the given client for page downloads.
func NewContentProcessor(log *logger.Logger, oracle llm.LLM, client *httpclient.Client) *ContentProcessor {
	return &ContentProcessor{log: log, oracle: oracle, client: client}
}

// Resolve turns submitted content into verifiable text. Unlike the pipeline
// stages behind it, Resolve returns errors: malformed input is rejected to
// the caller rather than degraded.
func (p *ContentProcessor) Resolve(ctx context.Context, content Content) (string, error) {
	switch {
	case content.Text != "":
		return content.Text, nil
	case content.URL != "":
		return p.resolvePage(ctx, content.URL)
	case len(content.Image) > 0:
		return p.describeImage(ctx, content.Image)
	default:
		return "", fmt.Errorf("content must include text, a url, or an image")
	}
}

// resolvePage downloads a page and converts its HTML to markdown, which
// keeps headings and emphasis the extractor can use as salience hints.
func (p *ContentProcessor) resolvePage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("invalid content url: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; SceptreBot/1.0)")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("content url returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read content url: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(string(raw))
	if err != nil {
		return "", fmt.Errorf("failed to convert page content: %w", err)
	}

	return strings.TrimSpace(markdown), nil
}

// describeImage sniffs the upload's media type and asks the oracle for a
// factual description of the image.
func (p *ContentProcessor) describeImage(ctx context.Context, image []byte) (string, error) {
	mtype := mimetype.Detect(image)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("unsupported upload type %s, expected an image", mtype.String())
	}

	resp, err := p.oracle.GenerateContent(ctx, &models.GenerateContentRequest{
		Content: []models.Content{
			{
				Role: models.SpeakerUser,
				Parts: []*models.Part{
					{Text: describeImagePrompt},
					{InlineData: &models.Blob{Data: image, MIMEType: mtype.String()}},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe image: %w", err)
	}

	description := strings.TrimSpace(resp.FirstText())
	if description == "" {
		return "", fmt.Errorf("image description came back empty")
	}

	return description, nil
}
