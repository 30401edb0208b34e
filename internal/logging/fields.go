package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// RequestFields 提供缓存名/请求键/命中状态字段，供资源拦截日志复用。
func RequestFields(cacheName, key, clientID string, cacheHit bool) logrus.Fields {
	fields := logrus.Fields{
		"cache":     cacheName,
		"key":       key,
		"cache_hit": cacheHit,
	}
	if clientID != "" {
		fields["client_id"] = clientID
	}
	return fields
}

// ConnectivityFields 描述一次连接状态迁移。
func ConnectivityFields(from, to bool, source string) logrus.Fields {
	return logrus.Fields{
		"action": "connectivity",
		"from":   statusLabel(from),
		"to":     statusLabel(to),
		"source": source,
	}
}

func statusLabel(online bool) string {
	if online {
		return "online"
	}
	return "offline"
}
