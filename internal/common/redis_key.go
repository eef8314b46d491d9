package common

func RedisKeyOnlineUsers() string {
	return "online_users"
}
