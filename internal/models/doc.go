// Package models provides functionality for listing the text-generation
// models available to an API credential, for both the OpenAI and the
// Gemini catalog.
package models
