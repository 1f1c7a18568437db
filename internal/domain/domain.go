// Package domain holds the request-scoped data model shared by the gateway's
// clients, services and handlers. Nothing here is persisted by the gateway
// itself; storage belongs to the data service.
package domain
