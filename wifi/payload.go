package wifi

import (
	"strconv"

	"github.com/weaver-sensing/weaver/sensor"
)

// appendBody appends the telemetry document for s. Keys are unquoted and
// pressure is in hPa.
func appendBody(dst []byte, s sensor.Snapshot) []byte {
	dst = append(dst, "{temperature:"...)
	dst = strconv.AppendFloat(dst, float64(s.Temperature), 'f', 2, 64)
	dst = append(dst, ", humidity:"...)
	dst = strconv.AppendFloat(dst, float64(s.Humidity), 'f', 2, 64)
	dst = append(dst, ", pressure:"...)
	dst = strconv.AppendFloat(dst, s.PressureHPa(), 'f', 2, 64)
	dst = append(dst, ", tvoc:"...)
	dst = strconv.AppendUint(dst, uint64(s.TVOC), 10)
	dst = append(dst, ", eco2:"...)
	dst = strconv.AppendUint(dst, uint64(s.ECO2), 10)
	return append(dst, '}')
}

// appendPayload appends the HTTP request that carries body to the
// telemetry endpoint of c.
func appendPayload(dst []byte, c *Configuration, body []byte) []byte {
	dst = append(dst, "POST /api/v1/"...)
	dst = append(dst, c.BrokerToken...)
	dst = append(dst, "/telemetry HTTP/1.1\r\nHost: "...)
	dst = append(dst, c.BrokerAddress...)
	dst = append(dst, ':')
	dst = strconv.AppendUint(dst, uint64(c.BrokerPort), 10)
	dst = append(dst, "\r\nContent-Type: application/json\r\nContent-Length: "...)
	dst = strconv.AppendInt(dst, int64(len(body)), 10)
	dst = append(dst, "\r\n\r\n"...)
	dst = append(dst, body...)
	return append(dst, "\r\n"...)
}
