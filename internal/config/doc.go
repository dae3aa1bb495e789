// Package config provides configuration parsing for the htmlattrs tool.
//
// The configuration is stored in htmlattrs.json, found in the working
// directory or one of its parents. Every field is optional.
//
// # Configuration File Structure
//
//	{
//	  "charset": "UTF-8",
//	  "element": {
//	    "tab": "  ",
//	    "lineEnd": "unix",
//	    "tabOffset": 0
//	  },
//	  "serve": {
//	    "host": "localhost",
//	    "port": 8420
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "htmlattrs"
//	  },
//	  "tracing": {
//	    "enabled": true,
//	    "tracerName": "htmlattrs"
//	  },
//	  "log": {
//	    "level": "info"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(cfg.ServeAddress())
package config
