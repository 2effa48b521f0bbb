package tui

import "github.com/atotto/clipboard"

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll
