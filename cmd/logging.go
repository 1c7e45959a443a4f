package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

var levelRank = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}

// levelWriter filters log.Printf lines by their [LEVEL] prefix and
// optionally re-encodes them as one JSON object per line
type levelWriter struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel int
	json     bool
	now      func() time.Time
}

// lineLevel extracts the level from a "[INFO] message" line.
// Lines without a prefix are treated as info.
func lineLevel(line []byte) (string, []byte) {
	if len(line) > 2 && line[0] == '[' {
		if end := bytes.IndexByte(line, ']'); end > 0 {
			lvl := strings.ToLower(string(line[1:end]))
			if _, ok := levelRank[lvl]; ok {
				return lvl, bytes.TrimLeft(line[end+1:], " ")
			}
		}
	}
	return "info", line
}

func (w *levelWriter) Write(p []byte) (int, error) {
	lvl, msg := lineLevel(p)
	if levelRank[lvl] < w.minLevel {
		return len(p), nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.json {
		_, err := w.out.Write(p)
		return len(p), err
	}

	entry := map[string]string{
		"time":  w.now().UTC().Format(time.RFC3339Nano),
		"level": lvl,
		"msg":   strings.TrimRight(string(msg), "\n"),
	}
	if err := json.NewEncoder(w.out).Encode(entry); err != nil {
		return 0, err
	}
	return len(p), nil
}

// setupLogging configures the standard logger and gin's mode
func setupLogging(level, format string, out io.Writer) {
	level = strings.ToLower(level)
	rank, ok := levelRank[level]
	if !ok {
		rank = levelRank["info"]
	}

	w := &levelWriter{out: out, minLevel: rank, json: strings.EqualFold(format, "json"), now: time.Now}
	log.SetOutput(w)
	if w.json {
		log.SetFlags(0)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	if level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = out
}
