// Command customload sends each row of a CSV file as a generic-resource
// JSON payload via PUT to an API endpoint.
//
// Each row produces a payload like:
//
//	{
//	  "resourceId": "<from --resource-id or CSV column>",
//	  "resources": [
//	    {
//	      "displayName": "...",
//	      "uniqueId": "...",
//	      "externalUrl": "...",
//	      "customProperties": { "<otherColumn>": "<value>" }
//	    }
//	  ]
//	}
package main

import (
	"os"

	"github.com/JonMunkholm/resourceload/internal/loader"
	"github.com/JonMunkholm/resourceload/internal/payload"
)

func main() {
	os.Exit(loader.Execute("customload", payload.BuildGeneric, os.Args[1:]))
}
