package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var homeownerFID int64
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream doorbell events for a homeowner",
		Long: `Connect to the doorbell SSE endpoint and stream events in real-time.

Events include:
  - connected: Stream established
  - visit_created: A visitor knocked on the door

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if homeownerFID <= 0 {
				return fmt.Errorf("--homeowner is required")
			}
			return streamEvents(homeownerFID, jsonOutput)
		},
	}

	cmd.Flags().Int64Var(&homeownerFID, "homeowner", 0, "Homeowner fid (required)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	_ = cmd.MarkFlagRequired("homeowner")

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(homeownerFID int64, jsonOutput bool) error {
	url := strings.TrimSuffix(cfg.ServerURL, "/") +
		"/api/v1/visits/events?homeowner_fid=" + strconv.FormatInt(homeownerFID, 10)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	req = req.WithContext(ctx)

	// No timeout; the stream stays open until interrupted
	streamClient := &http.Client{}
	resp, err := streamClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if !jsonOutput {
		fmt.Printf("Listening for doorbell events (homeowner %d)...\n", homeownerFID)
	}

	scanner := bufio.NewScanner(resp.Body)
	var event SSEEvent
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			event.Event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			if event.Data != "" {
				event.Data += "\n"
			}
			event.Data += strings.TrimPrefix(line, "data: ")
		case line == "" && event.Event != "":
			event.Time = time.Now()
			printEvent(event, jsonOutput)
			event = SSEEvent{}
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}

func printEvent(event SSEEvent, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.Marshal(event)
		fmt.Println(string(data))
		return
	}
	fmt.Printf("[%s] %s: %s\n", event.Time.Format("15:04:05"), event.Event, event.Data)
}
