// Package config loads the diagnose tool configuration from an HCL file.
//
// Every setting is optional; missing settings keep their defaults:
//
//	tolerance  = 1e-4
//	workers    = 8
//	cache_dir  = "/var/cache/resdata"
//	log_level  = "debug"
//	log_format = "json"
//
//	output {
//	  formatted   = true
//	  compression = "zstd"
//	}
package config
