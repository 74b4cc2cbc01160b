package cache

// SetScriptHash lets tests expect the EVALSHA issued by Set.
var SetScriptHash = setIfCurrent.Hash()
