// Package catalog holds the static product, resource, permission-type and
// country catalogs that drive role authoring and tenant provisioning.
//
// The built-in catalog mirrors the product line-up shipped with the console.
// Deployments can extend it with a YAML overlay file (see Load and Watch)
// to add custom products and resource categories without a rebuild.
package catalog
