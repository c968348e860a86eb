// Package modelio dumps decoded condition models for inspection: an indented
// text tree, JSON, MessagePack and a terminal table. The JSON and MessagePack
// forms share one document schema (Document).
package modelio
