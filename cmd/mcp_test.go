package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/Laisky/errors/v2"
	configLog "github.com/Laisky/go-utils/v3/log"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/search-rag/internal/person"
	"github.com/Laisky/search-rag/library/log"
	"github.com/Laisky/search-rag/library/ragbrowser"
)

type failingService struct{}

func (failingService) SearchPerson(context.Context, person.PersonRequest) (*person.Profile, error) {
	return nil, errors.New("actor unavailable")
}

func (failingService) Search(context.Context, string, ragbrowser.SearchOptions) ([]ragbrowser.Result, error) {
	return nil, errors.New("actor unavailable")
}

func (failingService) InvestigateUsername(context.Context, string) (*person.UsernameReport, error) {
	return nil, errors.New("actor unavailable")
}

func (failingService) ScrapeXProfile(context.Context, string) (*person.XProfile, error) {
	return nil, errors.New("actor unavailable")
}

func (failingService) FindXProfile(context.Context, string) (*person.XProfile, error) {
	return nil, errors.New("actor unavailable")
}

// swapStdout points os.Stdout at a pipe and rebuilds the process loggers the
// way they are built at startup, so they write to the pipe too.
func swapStdout(t *testing.T) (read func() []byte) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	origStdout := os.Stdout
	origLogger, origShared, origConfig := log.Logger, glog.Shared, configLog.Shared
	os.Stdout = w

	log.Logger, err = glog.NewConsoleWithName("search-rag", glog.LevelDebug)
	require.NoError(t, err)
	glog.Shared, err = glog.NewConsoleWithName("go-utils", glog.LevelDebug)
	require.NoError(t, err)
	configLog.Shared, err = configLog.NewConsoleWithName("go-config", configLog.LevelDebug)
	require.NoError(t, err)

	done := make(chan []byte, 1)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()

	t.Cleanup(func() {
		os.Stdout = origStdout
		log.Logger, glog.Shared, configLog.Shared = origLogger, origShared, origConfig
	})

	return func() []byte {
		os.Stdout = origStdout
		require.NoError(t, w.Close())
		return <-done
	}
}

func TestMCPStdioWritesOnlyFramesToStdout(t *testing.T) {
	read := swapStdout(t)

	require.NoError(t, log.RedirectToStderr())
	glog.Shared.Info("shared logger after redirect")
	configLog.Shared.Info("go-config logger after redirect")

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list","params":{}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"person_search","arguments":{"name":"Ada Lovelace"}}}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"raw_search","arguments":{"query":"ada"}}}`,
		`{"jsonrpc":"2.0","id":5,"method":"no/such/method","params":{}}`,
	}, "\n") + "\n"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, serveMCPStdio(ctx, failingService{}, strings.NewReader(in), os.Stdout))

	out := read()
	var ids []float64
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		require.True(t, json.Valid([]byte(line)), "stdout line is not a JSON-RPC frame: %q", line)

		var frame struct {
			ID float64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &frame))
		ids = append(ids, frame.ID)
	}
	require.NoError(t, scanner.Err())
	require.ElementsMatch(t, []float64{1, 2, 3, 4, 5}, ids)
	require.Contains(t, string(out), "Error searching for person")
}
