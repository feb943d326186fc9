// Package redis provides a DocumentCache backed by Redis.
package redis
