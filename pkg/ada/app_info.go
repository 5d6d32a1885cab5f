package ada

import (
	"fmt"
	"strings"

	"github.com/gregLibert/ledger-ada/pkg/apdu"
	"github.com/gregLibert/ledger-ada/pkg/tlv"
)

// AppVersion is the version triple of the running Cardano application.
type AppVersion struct {
	Major uint8
	Minor uint8
	Patch uint8
}

// AppInfo queries the application version. It doubles as a connectivity check:
// a device without the app running answers 0x6E00.
func (a *App) AppInfo() (*AppVersion, error) {
	tx, err := a.Client.Send(apdu.NewCommandAPDU(apdu.INS_APP_INFO, 0x00, 0x00, nil))
	if err != nil {
		return nil, err
	}

	body := tx.Response.Data
	if err := requireLen(apdu.INS_APP_INFO, "version", body, 3); err != nil {
		return nil, err
	}
	return &AppVersion{Major: body[0], Minor: body[1], Patch: body[2]}, nil
}

func (v AppVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Describe generates a human-readable report of the version.
func (v AppVersion) Describe() string {
	var sb strings.Builder
	sb.WriteString("=== CARDANO APP ===")
	tlv.WriteStructFields(&sb, "Version", v)
	return sb.String()
}
