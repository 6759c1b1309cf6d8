package utils

import (
	"fmt"
	"strings"
	"theracare-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateReportObjectName names a report object after its user and creation time.
func GenerateReportObjectName(userID string, now time.Time) string {
	return fmt.Sprintf(constvars.MinioReportObjectNameFormat, userID, now.UTC().Format("20060102T150405.000000000"))
}

func GenerateAudioObjectName(userID, fileExtension string) string {
	return fmt.Sprintf(constvars.MinioAudioObjectNameFormat, userID, uuid.NewString(), fileExtension)
}
