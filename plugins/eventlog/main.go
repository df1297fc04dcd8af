// Package main provides a sample event hook that appends every flip
// event it receives to a log file. Build it and drop the binary next to
// its hook.json in the hooks directory.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Request represents the input from the hook runner.
type Request struct {
	Event     string  `json:"event"`
	Hand      string  `json:"hand"`
	Direction string  `json:"direction"`
	Velocity  float64 `json:"velocity"`
	Message   string  `json:"message"`
	Timestamp int64   `json:"timestamp"`
}

// Response represents the output to the hook runner.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

const defaultLogFile = "events.log"

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	logFile := os.Getenv("MUDRA_EVENTLOG_FILE")
	if logFile == "" {
		logFile = defaultLogFile
	}

	if err := appendEvent(logFile, &req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to append event: %v", err))
		return
	}

	writeSuccessResponse(logFile)
}

// appendEvent writes one line per event to the log file.
func appendEvent(path string, req *Request) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	ts := time.UnixMilli(req.Timestamp).Format(time.RFC3339)
	_, err = fmt.Fprintf(f, "%s %s\n", ts, req.Message)
	return err
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse(logFile string) {
	data, _ := json.Marshal(map[string]string{"file": logFile})
	resp := Response{
		Success: true,
		Data:    data,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}
