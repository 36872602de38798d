// Command smoke-client drives a locally built hwpx-mcp-go binary over
// stdio JSON-RPC and runs a scripted editing session against a scratch
// document. It is a manual end-to-end check, not part of the test suite.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      int       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type toolCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

type serverClient struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	reader *bufio.Scanner
	reqID  int
}

func startServer(binary, baseDir string) (*serverClient, error) {
	c := &serverClient{reqID: 1}
	c.cmd = exec.Command(binary, "--base-dir", baseDir)

	var err error
	c.stdin, err = c.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := c.cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := c.cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := c.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start server: %w", err)
	}

	c.reader = bufio.NewScanner(stdout)
	c.reader.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			fmt.Printf("[server] %s\n", scanner.Text())
		}
	}()
	return c, nil
}

func (c *serverClient) send(method string, params any) (*rpcResponse, error) {
	req := rpcRequest{JSONRPC: "2.0", ID: c.reqID, Method: method, Params: params}
	c.reqID++

	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	if _, err := c.stdin.Write(append(data, '\n')); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}

	done := make(chan string, 1)
	go func() {
		if c.reader.Scan() {
			done <- c.reader.Text()
		} else {
			done <- ""
		}
	}()
	select {
	case line := <-done:
		if line == "" {
			return nil, fmt.Errorf("no response for %s", method)
		}
		var resp rpcResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			return nil, fmt.Errorf("unmarshal response: %w", err)
		}
		return &resp, nil
	case <-time.After(15 * time.Second):
		return nil, fmt.Errorf("timeout waiting for %s", method)
	}
}

func (c *serverClient) callTool(name string, args map[string]any) error {
	resp, err := c.send("tools/call", toolCallParams{Name: name, Arguments: args})
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return fmt.Errorf("%s: %s", name, resp.Error.Message)
	}
	fmt.Printf("✅ %s\n", name)
	return nil
}

func (c *serverClient) close() {
	if c.stdin != nil {
		c.stdin.Close()
	}
	if c.cmd != nil && c.cmd.Process != nil {
		c.cmd.Process.Kill()
		c.cmd.Wait()
	}
}

func run(binary string) error {
	baseDir, err := os.MkdirTemp("", "hwpx-smoke-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(baseDir)

	client, err := startServer(binary, baseDir)
	if err != nil {
		return err
	}
	defer client.close()

	resp, err := client.send("initialize", map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "hwpx-smoke-client", "version": "1.0.0"},
	})
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	if resp.Error != nil {
		return fmt.Errorf("initialize: %s", resp.Error.Message)
	}
	fmt.Println("✅ initialize")

	resp, err = client.send("tools/list", nil)
	if err != nil {
		return fmt.Errorf("tools/list: %w", err)
	}
	if result, ok := resp.Result.(map[string]any); ok {
		if tools, ok := result["tools"].([]any); ok {
			fmt.Printf("✅ tools/list reported %d tools\n", len(tools))
		}
	}

	doc := "smoke.hwpx"
	steps := []struct {
		tool string
		args map[string]any
	}{
		{"hwpx_create", map[string]any{"path": doc}},
		{"hwpx_add_heading", map[string]any{"path": doc, "text": "스모크 테스트", "level": 1}},
		{"hwpx_add_paragraph", map[string]any{"path": doc, "text": "2026학년도 교육과정 편성 내용입니다."}},
		{"hwpx_find", map[string]any{"path": doc, "text": "교육과정"}},
		{"hwpx_replace_text", map[string]any{"path": doc, "find": "2026학년도", "replace": "2027학년도"}},
		{"hwpx_add_table", map[string]any{"path": doc, "rows": 2, "cols": 2, "data": `[["과목","시수"],["국어","4"]]`}},
		{"hwpx_merge_table_cells", map[string]any{"path": doc, "table_index": 0, "start_row": 0, "start_col": 0, "end_row": 0, "end_col": 1}},
		{"hwpx_split_table_cell", map[string]any{"path": doc, "table_index": 0, "row": 0, "col": 0}},
		{"hwpx_get_table", map[string]any{"path": doc, "table_index": 0}},
		{"hwpx_export_markdown", map[string]any{"path": doc}},
		{"hwpx_open_info", map[string]any{"path": doc}},
	}
	for _, step := range steps {
		if err := client.callTool(step.tool, step.args); err != nil {
			return err
		}
	}

	fmt.Println("🎉 smoke run completed")
	return nil
}

func main() {
	binary := flag.String("server", "./hwpx-mcp-go", "path to the server binary")
	flag.Parse()

	path, err := filepath.Abs(*binary)
	if err != nil {
		log.Fatalf("resolve server path: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		log.Fatalf("server binary not found at %s, build it first", path)
	}
	if err := run(path); err != nil {
		log.Fatalf("smoke run failed: %v", err)
	}
}
