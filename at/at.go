package at

import "strconv"

const (
	// Terminal Control
	CRLF = "\r\n"
	LF   = '\n'
	CR   = '\r'

	// Commands
	CmdReset       = "AT+RST"
	CmdStationMode = "AT+CWMODE=1"
	cmdJoinAP      = "AT+CWJAP="
	cmdStartTCP    = "AT+CIPSTART=\"TCP\","
	cmdSend        = "AT+CIPSEND="
)

// Keyword is a response fragment the WiFi module emits. Lines are matched
// by substring, never by equality.
type Keyword string

const (
	// Final results
	Ready            Keyword = "ready"
	OK               Keyword = "OK"
	Error            Keyword = "ERROR"
	Fail             Keyword = "FAIL"
	AlreadyConnected Keyword = "ALREADY CONNECTED"
	SendOK           Keyword = "SEND OK"
	SendFail         Keyword = "SEND FAIL"

	// Unsolicited link drops
	WifiDisconnected Keyword = "WIFI DISCONNECTED"
	Closed           Keyword = "CLOSED"
)

// AppendJoinAP appends AT+CWJAP="ssid","password" and CRLF to dst.
func AppendJoinAP(dst []byte, ssid, password string) []byte {
	dst = append(dst, cmdJoinAP...)
	dst = appendQuoted(dst, ssid)
	dst = append(dst, ',')
	dst = appendQuoted(dst, password)
	return append(dst, CRLF...)
}

// AppendStartTCP appends AT+CIPSTART="TCP","addr",port and CRLF to dst.
func AppendStartTCP(dst []byte, addr string, port uint32) []byte {
	dst = append(dst, cmdStartTCP...)
	dst = appendQuoted(dst, addr)
	dst = append(dst, ',')
	dst = strconv.AppendUint(dst, uint64(port), 10)
	return append(dst, CRLF...)
}

// AppendSend appends AT+CIPSEND=n and CRLF to dst.
func AppendSend(dst []byte, n int) []byte {
	dst = append(dst, cmdSend...)
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, CRLF...)
}

// AppendCommand appends a bare command and CRLF to dst.
func AppendCommand(dst []byte, cmd string) []byte {
	dst = append(dst, cmd...)
	return append(dst, CRLF...)
}

// appendQuoted wraps s in double quotes verbatim. The module firmware has
// no escaping, so quotes inside s reach it unchanged.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	dst = append(dst, s...)
	return append(dst, '"')
}
