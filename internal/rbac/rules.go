package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"mocktest:start",
		"mocktest:answer",
		"mocktest:reset",
		"mocktest:view-own",
		"progress:own",
		"speech:use",
		"attempts:view-own",
	},
	"teacher": {
		"mocktest:*",
		"progress:own",
		"speech:use",
		"bank:upload",
		"attempts:view-own",
		"attempts:view-all",
	},
	"admin": {
		"*", // everything
	},
}
