package logging

import (
	"net/http"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
)

// LoggingWrapper adapts a LogData-aware handler to http.HandlerFunc, timing
// the call and tagging every line with a per-request id.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		if requestID, err := uuid.NewV4(); err == nil {
			logData.AddData("requestID", requestID.String())
		}
		logData.AddData("method", req.Method)
		logData.AddData("path", req.URL.Path)

		endTimer := logData.AddTiming("duration")
		defer endTimer()
		err := handler(w, req, logData)
		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}
