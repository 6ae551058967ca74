// Package domain contains the core model for navlink: documentation versions,
// the sidebar navigation tree, and the versioned path resolution rule.
//
// The domain is format- and transport-agnostic: it does not depend on YAML or
// HCL parsing, net/http, or the filesystem. Infra adapters map into/from these
// types.
package domain
