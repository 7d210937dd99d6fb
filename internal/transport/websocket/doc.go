// Package websocket serves match-3 games over WebSocket.
//
// Every connection owns one game session. The variant and seed are chosen
// with query parameters when connecting:
//
//	ws://host:8080/ws?variant=match3_hex&seed=42
//
// Message Protocol:
//
// Clients send JSON documents with a "type" field:
//   - {"type": "swap", "from": {"row": 7, "col": 3}, "to": {"row": 7, "col": 2}}
//   - {"type": "state"}
//   - {"type": "hint"}
//   - {"type": "new", "seed": 7}
//
// The server answers a swap with "rejected" or "reverted", or with one
// "step" per settle step followed by "settled". "state", "hint" and "error"
// replies carry the current board. Every frame holds one document.
//
// Finished games are handed to a ResultSink, which usually persists them.
package websocket
