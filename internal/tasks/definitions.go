package tasks

// DefineTasks registers all available tasks on r
func DefineTasks(r *Registry) {
	r.Register(LogInfoTask.TaskID(), LogInfoTask.HandleExecution)
	r.Register(SyncContentTask.TaskID(), SyncContentTask.HandleExecution)
	r.Register(WarmCacheTask.TaskID(), WarmCacheTask.HandleExecution)
}
