package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"hotelbooking/pkg/client"
)

// printResponse writes the JSON body indented. Error statuses are returned as
// errors carrying the server's message.
func printResponse(w io.Writer, resp *client.Response) error {
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s: %s", resp.Status, client.GetErrorMessage(resp))
	}

	var out bytes.Buffer
	if err := json.Indent(&out, resp.Body, "", "  "); err != nil {
		_, werr := w.Write(resp.Body)
		return werr
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}
