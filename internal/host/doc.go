// Package host publishes a template bundle's stylesheet search paths to the
// stylesheet compiler. Two registration modes exist: framework mode
// registers the bundle base directory under a framework name, and load-path
// mode appends <base>/stylesheets to an ordered list of load paths. The
// caller picks the mode once and passes an explicit Environment; nothing
// here reads or mutates process environment variables.
package host
