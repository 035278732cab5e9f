package api

import "strings"

// Operation describes one logical API operation: how it is reached on
// the wire and which status code a successful call produces. The same
// table drives route registration on the server and URL construction
// in clients, so the two can never drift apart.
type Operation struct {
	Method  string
	Path    string
	Success int
}

// Contract is the full route table, grouped by concern.
var Contract = struct {
	Auth struct {
		Login  Operation
		Logout Operation
		Me     Operation
	}
	Downloads struct {
		List   Operation
		Create Operation
		Update Operation
		Delete Operation
	}
	Videos struct {
		List   Operation
		Create Operation
		Update Operation
		Delete Operation
	}
	Settings struct {
		Get    Operation
		Update Operation
	}
	Proxy struct {
		RobloxVersion Operation
	}
}{
	Auth: struct {
		Login  Operation
		Logout Operation
		Me     Operation
	}{
		Login:  Operation{Method: "POST", Path: "/api/auth/login", Success: 200},
		Logout: Operation{Method: "POST", Path: "/api/auth/logout", Success: 200},
		Me:     Operation{Method: "GET", Path: "/api/auth/me", Success: 200},
	},
	Downloads: struct {
		List   Operation
		Create Operation
		Update Operation
		Delete Operation
	}{
		List:   Operation{Method: "GET", Path: "/api/downloads", Success: 200},
		Create: Operation{Method: "POST", Path: "/api/downloads", Success: 201},
		Update: Operation{Method: "PUT", Path: "/api/downloads/:id", Success: 200},
		Delete: Operation{Method: "DELETE", Path: "/api/downloads/:id", Success: 204},
	},
	Videos: struct {
		List   Operation
		Create Operation
		Update Operation
		Delete Operation
	}{
		List:   Operation{Method: "GET", Path: "/api/videos", Success: 200},
		Create: Operation{Method: "POST", Path: "/api/videos", Success: 201},
		Update: Operation{Method: "PUT", Path: "/api/videos/:id", Success: 200},
		Delete: Operation{Method: "DELETE", Path: "/api/videos/:id", Success: 204},
	},
	Settings: struct {
		Get    Operation
		Update Operation
	}{
		Get:    Operation{Method: "GET", Path: "/api/settings", Success: 200},
		Update: Operation{Method: "PUT", Path: "/api/settings", Success: 200},
	},
	Proxy: struct {
		RobloxVersion Operation
	}{
		RobloxVersion: Operation{Method: "GET", Path: "/api/proxy/roblox-version", Success: 200},
	},
}

// BuildPath substitutes named placeholders (":id" style) in a path
// template. Parameters with no matching placeholder are ignored.
func BuildPath(path string, params map[string]string) string {
	for key, value := range params {
		path = strings.ReplaceAll(path, ":"+key, value)
	}
	return path
}
