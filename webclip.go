// Package webclip extracts the main article content from web pages and
// converts it to Markdown, HTML, or plain text. It locates content through
// an ordered fallback chain (readability-style extraction, selector
// heuristics, AMP variant, headless-browser render), pulls metadata from
// JSON-LD and meta tags, cleans the result, and optionally downloads
// referenced images and files, rewriting links to local paths.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, readability/, rod/).
package webclip
