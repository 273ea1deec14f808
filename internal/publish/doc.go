// Package publish uploads generated template code to S3 for `slab deploy`.
package publish
