package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

const sampleBundle = `
owner:
  name: Jordan Example
executor:
  name: Sam Example
  walletAddress: "0x0000000000000000000000000000000000000009"
assets:
  - id: eth
    chain: ethereum
    symbol: ETH
    balance: "1.5"
    walletAddress: "0x0000000000000000000000000000000000000001"
beneficiaries:
  - id: b1
    name: Alice
allocations:
  - assetId: eth
    beneficiaryId: b1
    percentage: 50
`

// newTestEnv returns an Environment writing to buffers with a fixed clock.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// writeFile writes content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}
