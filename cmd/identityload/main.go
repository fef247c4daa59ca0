// Command identityload sends each row of a CSV file as a typed
// identity-resource JSON payload via PUT to an API endpoint.
//
// Every column except resourceId lands in resources[0] with its value
// coerced: mfaMethods is always an array, mfaEnabled always a boolean, and
// other values get best-effort typing (booleans and embedded JSON literals).
//
//	{
//	  "resources": [
//	    {
//	      "mfaEnabled": true,
//	      "mfaMethods": ["PUSH_PROMPT"],
//	      "email": "john.doe@test.com"
//	    }
//	  ],
//	  "resourceId": "69325a67306d8b286ddc41c1"
//	}
package main

import (
	"os"

	"github.com/JonMunkholm/resourceload/internal/loader"
	"github.com/JonMunkholm/resourceload/internal/payload"
)

func main() {
	os.Exit(loader.Execute("identityload", payload.BuildTyped, os.Args[1:]))
}
