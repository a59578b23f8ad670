/*
Package session orchestrates persisted quiz sessions.

Stateless hosts (the HTTP API, the MCP server) rebuild a wizard per request
from the stored domain.QuizSession. The Manager serializes those
read-modify-write cycles per session id with ref-counted local locks and,
when configured, a distributed lock shared by every replica.
*/
package session
