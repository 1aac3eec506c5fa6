package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Duration 是配置中使用的时长类型
//
// JSON 中可写为 Go 时长字符串，或写为整数毫秒（与设备固件中
// ACK 超时、事务窗口的毫秒配置一致）：
//
//	{"retransmit": {"ack_timeout": "2s"}}
//	{"retransmit": {"ack_timeout": 2000}}
//
// 负值无效。
type Duration time.Duration

// UnmarshalJSON 解析字符串时长或整数毫秒
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		return d.set(v)
	}

	var ms int64
	if err := json.Unmarshal(data, &ms); err == nil {
		return d.set(time.Duration(ms) * time.Millisecond)
	}

	return fmt.Errorf("duration must be a string (\"2s\") or integer milliseconds, got %s", data)
}

func (d *Duration) set(v time.Duration) error {
	if v < 0 {
		return errors.New("duration must not be negative")
	}
	*d = Duration(v)
	return nil
}

// MarshalJSON 输出字符串形式
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Duration 返回 time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
