// Package providers implements the Client interface for each supported LLM
// provider.
//
// Supported providers: Google (Gemini, the default), Anthropic (Claude), and
// OpenAI (GPT).
//
// All providers share a common retry helper with exponential back-off:
// rate limits and 5xx responses are retried, authentication errors never are.
// Each client honors a PRREVIEW_<PROVIDER>_BASE_URL environment variable so
// tests can redirect calls to local httptest servers without making live API
// requests.
//
// Use [New] to obtain a Client by provider name and model string.
package providers
