/*
Package ports defines the driven ports (interfaces) for Parley hosts.

# Key Interfaces

  - TreeLoader: Loads dialogue trees (e.g., from a directory or memory).
  - SessionStore: Persists paused conversations (tree id plus context snapshot).
  - DistributedLocker: Serializes access to a session across instances.
*/
package ports
