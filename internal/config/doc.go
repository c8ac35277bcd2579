// Package config manages user-level settings stored at ~/.kickstart/config.yaml
// and KICKSTART_* environment variables. It exposes raw key access for the
// config command and a typed Settings view consumed by the planner, the
// registration layer and the template registry.
package config
