package elevmetadata

import (
	"encoding/json"
	"time"

	"github.com/detoxte/TTK4235/internal/logger"
)

var Log = logger.GetLogger()

type ElevMetaData struct {
	Identifier       string        `json:"identifier"`
	SoftwareVersion  string        `json:"software_version"`
	DriverAddress    string        `json:"driver_address"`
	NumFloors        int           `json:"num_floors"`
	DoorOpenDuration time.Duration `json:"door_open_duration"`
}

func (elevMetaData *ElevMetaData) String() string {
	jsonData, err := json.Marshal(elevMetaData)

	if err != nil {
		Log.Error().Msg("Error Serialising ElevMetaData Object to JSON")
		return ""
	}
	return string(jsonData)
}
