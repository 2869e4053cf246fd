// Package handlers provides the content-producing endpoints served
// behind the api.Handler capability interface: home page, server time,
// header dump, cookie echo, synthetic load generator, session-backed
// multi-user view, and the monitoring dashboard.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package handlers
