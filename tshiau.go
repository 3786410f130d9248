// Package tshiau provides a pre-processor for Mandarin to Taiwanese Hokkien
// translation. It segments an input sentence into words, looks each word up
// in the MOE Taiwanese dictionary, falls back to per-character lookups for
// words without an entry, and assembles the results into a deterministic
// markdown document intended as LLM context.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, gse/, opencc/).
package tshiau
