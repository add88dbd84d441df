// Package health provides the AEGIS backend health client and reusable
// connectivity checks. The Client fetches the backend's aggregate health
// report (the per-service breakdown rendered on the health dashboard);
// the standalone check functions verify reachability of individual
// dependencies before a client is even constructed.
package health
