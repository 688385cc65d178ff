package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
)

// Frame is one line written by JSONHandler for a result.
type Frame struct {
	NodeID      string        `json:"node_id"`
	Type        string        `json:"type"`
	Content     string        `json:"content,omitempty"`
	Choices     []FrameChoice `json:"choices,omitempty"`
	CanContinue bool          `json:"can_continue"`
	IsEnd       bool          `json:"is_end"`
}

// FrameChoice is a visible choice inside a Frame.
type FrameChoice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// SystemFrame carries a meta-message.
type SystemFrame struct {
	System string `json:"system"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
// Input lines may be JSON strings ("accept") or raw text (accept).
type JSONHandler struct {
	Reader  *bufio.Reader
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

// FrameOf converts a result into its wire form.
func FrameOf(res *domain.Result) Frame {
	f := Frame{
		NodeID:      res.Node.ID,
		Type:        res.Node.Type,
		Content:     res.Node.Content,
		CanContinue: res.CanContinue,
		IsEnd:       res.IsEnd,
	}
	for _, c := range res.Choices {
		f.Choices = append(f.Choices, FrameChoice{ID: c.ID, Text: c.Text})
	}
	return f
}

func (h *JSONHandler) Output(ctx context.Context, res *domain.Result) error {
	return h.Encoder.Encode(FrameOf(res))
}

func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		text = val
	}
	return SanitizeInput(text)
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(SystemFrame{System: msg})
}
