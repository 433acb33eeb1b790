// Package webster provides a CLI assistant for chatting with websites.
// It scrapes a site into local Markdown documents, chunks and embeds the
// content for semantic search, and answers natural language questions
// about the site through an LLM backend.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, openai/).
package webster
