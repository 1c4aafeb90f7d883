// Package adapters provides the node definitions that wrap external
// service capabilities: AI text and video generation, social-media
// search, contact enrichment, and SEO keyword data. Each adapter is
// straight-line glue: read the input, probe the execution context for
// the capability it needs, call it, reshape the response. Networking
// and authentication live behind the capability interfaces, owned by
// the host.
package adapters
